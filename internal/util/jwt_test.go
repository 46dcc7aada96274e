package util

import (
	"codequest_backend/internal/model"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJWT_RoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 7},
		Email:     "kid@example.com",
		Role:      model.Student,
	}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "kid@example.com", claims.Email)
}

func TestParseJWT_InvalidTokensAlwaysError(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Student}
	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	// 篡改签名
	tampered := token[:len(token)-1]
	if strings.HasSuffix(token, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}

	expired, err := GenerateJWT(user, "test-secret", -time.Hour)
	require.NoError(t, err)

	// 无效令牌必须返回错误，绝不能 (nil, nil) 放行
	for _, bad := range []string{tampered, expired, "not.a.token"} {
		claims, err := ParseJWT(bad, "test-secret")
		assert.Error(t, err)
		assert.Nil(t, claims)
	}

	claims, err := ParseJWT(token, "another-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
