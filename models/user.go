package models

type UserAccount struct {
	JsonModel
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"unique"`
	Banned    bool   `gorm:"default:false" json:"-"`
	AvatarURL string `json:"avatar_url"`
}
