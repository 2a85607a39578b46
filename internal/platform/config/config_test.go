package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "2", cfg.Tariff.PenaltyRatePerMonth.String())
	assert.Equal(t, "12", cfg.Tariff.InterestRatePerAnnum.String())
	assert.Equal(t, 15*24*time.Hour, cfg.Tariff.NoticeGracePeriod)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, ProofStorageLocal, cfg.ProofStorageDriver)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"STORAGE_DRIVER":       "MEMORY",
		"SMTP_HOST":            "smtp.example.org",
		"NOTICE_EMAIL_TO":      "enforcement@example.org, clerk@example.org",
		"PROOF_STORAGE_DRIVER": "s3",
		"S3_BUCKET":            "proofs",
		"PUBLIC_BASE_URL":      "https://tax.example.org/",
	}))
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, []string{"enforcement@example.org", "clerk@example.org"}, cfg.SMTP.NoticeTo)
	assert.Equal(t, "proofs", cfg.S3.Bucket)
	assert.Equal(t, "https://tax.example.org", cfg.PublicBaseURL)
}

func TestFromViper_Rejects(t *testing.T) {
	cases := map[string]map[string]any{
		"unknown storage":        {"STORAGE_DRIVER": "mongo"},
		"negative penalty":       {"PENALTY_RATE_PERCENT_PER_MONTH": "-1"},
		"bad grace":              {"NOTICE_GRACE_PERIOD": "soon"},
		"s3 without bucket":      {"PROOF_STORAGE_DRIVER": "s3"},
		"default secret in prod": {"IS_PRODUCTION": true},
		"unknown proof storage":  {"PROOF_STORAGE_DRIVER": "ftp"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fromViper(newTestViper(overrides))
			assert.Error(t, err)
		})
	}
}
