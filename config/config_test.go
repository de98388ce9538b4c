package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/tab-pos/models"
)

func TestValidate(t *testing.T) {
	ok := Config{TabMode: models.ModeTable, TabCount: 10, DBDriver: "sqlite", CartTTL: 4 * time.Hour, CartSweep: time.Minute}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.TabMode = "bar"
	assert.ErrorContains(t, bad.Validate(), "TAB_MODE")

	bad = ok
	bad.TabCount = 0
	assert.ErrorContains(t, bad.Validate(), "TAB_COUNT")

	bad = ok
	bad.DBDriver = "oracle"
	assert.ErrorContains(t, bad.Validate(), "DB_DRIVER")

	bad = ok
	bad.CartTTL = 0
	assert.ErrorContains(t, bad.Validate(), "CART_TTL")
}

func TestValidateRequiresJWTSecretWithManagerPIN(t *testing.T) {
	c := Config{TabMode: models.ModeTable, TabCount: 10, DBDriver: "sqlite", CartTTL: time.Hour, CartSweep: time.Minute}
	c.ManagerPINHash = "$2a$10$abcdefghijklmnopqrstuv"
	assert.ErrorContains(t, c.Validate(), "JWT_SECRET")

	c.JWTSecret = "s3cret"
	assert.NoError(t, c.Validate())

	c.ManagerPINHash, c.JWTSecret = "", ""
	assert.NoError(t, c.Validate(), "without a manager PIN no token is ever issued")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TAB_MODE", "TICKET")
	t.Setenv("TAB_COUNT", "35")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")

	c, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, models.ModeTicket, c.TabMode)
	assert.Equal(t, 35, c.TabCount)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.KafkaBrokers)
	assert.Equal(t, 4*time.Hour, c.CartTTL)
}

func TestLoadRejectsManagerPINWithoutSecret(t *testing.T) {
	t.Setenv("MANAGER_PIN_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestSplitCSV(t *testing.T) {
	assert.Empty(t, splitCSV(""))
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a ,b,"))
}
