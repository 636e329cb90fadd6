package test

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"time"

	"wardrobeapi/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	var body string
	if param != nil {
		body = JsonString(param)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateUserToken(userPk)))
	return req
}

func NewJSONAuthRequestCustomAuth(method string, target string, authorizationString string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", authorizationString)
	return req
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	return FakeUserV2(db, "OurName", "email@example.com")
}

func FakeUserV2(db *gorm.DB, userName string, email string) *models.UserAccount {
	user := &models.UserAccount{
		Name:      userName,
		Email:     email,
		AvatarURL: "pictureurl",
	}
	db.Create(user)
	return user
}

// FakeClothing stores a clothing item of owner. style, season and occasions
// default to casual, spring and daily when empty.
func FakeClothing(db *gorm.DB, owner *models.UserAccount, category, color string, style, season, occasions []string) *models.Clothing {
	if len(style) == 0 {
		style = []string{"casual"}
	}
	if len(season) == 0 {
		season = []string{"spring"}
	}
	if len(occasions) == 0 {
		occasions = []string{"daily"}
	}
	clothing := &models.Clothing{
		Name:      fmt.Sprintf("%s %s", color, category),
		OwnerID:   owner.ID,
		Category:  category,
		Type:      category,
		Color:     color,
		Style:     datatypes.JSONSlice[string](style),
		Season:    datatypes.JSONSlice[string](season),
		Occasions: datatypes.JSONSlice[string](occasions),
	}
	db.Create(clothing)
	return clothing
}

// EnqueuerMock records enqueued tasks instead of talking to redis.
type EnqueuerMock struct {
	mu    sync.Mutex
	Tasks []*asynq.Task
	Err   error
}

func (m *EnqueuerMock) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks = append(m.Tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(m.Tasks)), Type: task.Type(), Payload: task.Payload()}, nil
}

func (m *EnqueuerMock) Enqueued() []*asynq.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*asynq.Task, len(m.Tasks))
	copy(out, m.Tasks)
	return out
}
