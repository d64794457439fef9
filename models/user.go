package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/utils"
)

type User struct {
	ID             int       `gorm:"primary_key" json:"id"`
	Username       string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Name           string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email          string    `gorm:"size:100" json:"email"`
	Phone          string    `gorm:"size:20" json:"phone"`
	Password       string    `gorm:"size:255;not null" json:"password"`
	Role           UserRole  `gorm:"type:enum('GENERAL','AREA_SPECIALIST');default:AREA_SPECIALIST" json:"role"`
	Code           string    `gorm:"size:20" json:"code"`
	ErpUser        string    `gorm:"size:100" json:"erp_user"`
	Company        string    `gorm:"size:100" json:"company"`
	AreaIds        []int     `gorm:"serializer:json" json:"area_ids"`
	AllowedPages   []string  `gorm:"serializer:json" json:"allowed_pages"`
	AllowedReports []string  `gorm:"serializer:json" json:"allowed_reports"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username       string   `json:"username" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Password       string   `json:"password"`
	Role           UserRole `json:"role" binding:"required"`
	Code           string   `json:"code"`
	ErpUser        string   `json:"erp_user"`
	Company        string   `json:"company"`
	AreaIds        []int    `json:"area_ids"`
	AllowedPages   []string `json:"allowed_pages"`
	AllowedReports []string `json:"allowed_reports"`
}

/*
caches:
	User:$id
	UserList
	Token:$token
	Tokens:$username
*/

// CanResolve reports whether the user may act on inconsistencies of the
// given area. GENERAL users act on any area; specialists only on areas in
// their scope. A missing area id simply does not match.
func (u *User) CanResolve(areaId int) bool {
	if u.Role == UserRoleGeneral {
		return true
	}
	return utils.ContainsInt(u.AreaIds, areaId)
}

func (u *User) CanViewPage(page string) bool {
	return utils.ContainsString(u.AllowedPages, page)
}

func (u *User) CanViewReport(report string) bool {
	return utils.ContainsString(u.AllowedReports, report)
}

func (result *User) PrepareGive() {
	result.Password = ""
}

func (input *NewUser) validate() error {
	if !input.Role.Valid() {
		return utils.NewValidationError("invalid user role: %s", input.Role)
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return utils.NewValidationError("invalid email address: %s", input.Email)
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return utils.NewValidationError("invalid phone number: %s", input.Phone)
		}
	}
	return nil
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, utils.NewValidationError("password is required")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Username:       input.Username,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Password:       string(hashed),
		Role:           input.Role,
		Code:           input.Code,
		ErpUser:        input.ErpUser,
		Company:        input.Company,
		AreaIds:        input.AreaIds,
		AllowedPages:   input.AllowedPages,
		AllowedReports: input.AllowedReports,
	}
	if user.AreaIds == nil {
		user.AreaIds = []int{}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	if err := utils.InvalidateRedis[User](user.ID); err != nil {
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

func UpdateUser(ctx context.Context, id int, input *NewUser) (*User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	user, err := utils.FetchModel[User](ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"Username":       input.Username,
		"Name":           input.Name,
		"Email":          input.Email,
		"Phone":          input.Phone,
		"Role":           input.Role,
		"Code":           input.Code,
		"ErpUser":        input.ErpUser,
		"Company":        input.Company,
		"AreaIds":        input.AreaIds,
		"AllowedPages":   input.AllowedPages,
		"AllowedReports": input.AllowedReports,
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		updates["Password"] = string(hashed)
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := utils.InvalidateRedis[User](id); err != nil {
		return nil, err
	}
	user.PrepareGive()
	return user, nil
}

func DeleteUser(ctx context.Context, id int) (*User, error) {
	user, err := utils.FetchModel[User](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(user).Error; err != nil {
		return nil, err
	}
	if err := utils.InvalidateRedis[User](id); err != nil {
		return nil, err
	}
	user.PrepareGive()
	return user, nil
}

func GetUser(ctx context.Context, id int) (*User, error) {
	result, err := utils.RetrieveRedis[User](id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result, err = utils.FetchModel[User](ctx, id)
		if err != nil {
			return nil, err
		}
		if err := utils.StoreRedis[User](result, id); err != nil {
			return nil, err
		}
	}
	result.PrepareGive()
	return result, nil
}

func GetUsers(ctx context.Context) ([]*User, error) {
	results, err := utils.RetrieveRedisList[User]()
	if err != nil {
		return nil, err
	}
	if results == nil {
		db := config.GetDB()
		if err = db.WithContext(ctx).Order("id").Find(&results).Error; err != nil {
			return nil, err
		}
		if err := utils.StoreRedisList[User](results); err != nil {
			return nil, err
		}
	}
	for _, u := range results {
		u.PrepareGive()
	}
	return results, nil
}

// UserNameByID resolves a user id against a loaded slice, degrading to a
// placeholder when the user was deleted.
func UserNameByID(users []*User, id int) string {
	for _, u := range users {
		if u.ID == id {
			return u.Name
		}
	}
	return "Usuário Desconhecido"
}

type LoginInfo struct {
	Token          string   `json:"token"`
	Name           string   `json:"name"`
	Role           UserRole `json:"role"`
	AllowedPages   []string `json:"allowed_pages"`
	AllowedReports []string `json:"allowed_reports"`
}

// Login asserts the current user: the password check gates the session
// token, nothing more. There is no external identity verification.
func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {
	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := utils.JwtGenerate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	// session bookkeeping, so Logout can revoke
	if err := config.SetRedisValue("Token:"+token, user.Username, 0); err != nil {
		return nil, err
	}
	if err := config.AddRedisSet("Tokens:"+user.Username, token); err != nil {
		return nil, err
	}

	return &LoginInfo{
		Token:          token,
		Name:           user.Name,
		Role:           user.Role,
		AllowedPages:   user.AllowedPages,
		AllowedReports: user.AllowedReports,
	}, nil
}

// destroy current session
func Logout(ctx context.Context) (bool, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return false, errors.New("token is required")
	}
	err := config.RemoveRedisKey("Token:" + fmt.Sprint(token))
	if err != nil {
		return false, nil
	}
	// remove current token from tokens list
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return false, errors.New("user not found")
	}
	if err := config.RemoveRedisSetMember("Tokens:"+username, token); err != nil {
		return false, err
	}
	return true, nil
}
