package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blog-scout/config"
)

func TestValidateRequired(t *testing.T) {
	cfg := &config.AppConfig{}
	err := cfg.ValidateRequired()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "NAVER_COOKIE")
	assert.Contains(t, err.Error(), "NOTION_TOKEN")
	assert.Contains(t, err.Error(), "NOTION_DB_ID")

	cfg.NaverCookie = "cookie"
	err = cfg.ValidateRequired()
	assert.Error(t, err)
	assert.NotContains(t, err.Error(), "NAVER_COOKIE")

	cfg.NotionToken = "token"
	cfg.NotionDBID = "db"
	assert.NoError(t, cfg.ValidateRequired())
}
