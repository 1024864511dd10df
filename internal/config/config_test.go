package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		DiscordToken:      "token",
		MessageXP:         2,
		VoiceXPPerMinute:  3,
		XPCooldownSeconds: 60,
		DailyRewardMin:    50,
		DailyRewardMax:    200,
		WorkRewardMin:     20,
		WorkRewardMax:     100,
		DailyUseLimit:     5,
		UserDataFile:      "user_data.json",
		EconomyDataFile:   "economy_data.json",
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	c := validConfig()
	c.MessageXP = -1
	assert.Error(t, c.Validate())

	c = validConfig()
	c.DailyRewardMin = 300
	assert.Error(t, c.Validate())

	c = validConfig()
	c.DailyUseLimit = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.UserDataFile = ""
	assert.Error(t, c.Validate())
}
