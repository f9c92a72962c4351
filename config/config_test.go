package config

import (
	"testing"
	"time"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEARNEASE_AUTH_JWT_SECRET", "test-secret-key-for-unit-testing")
	t.Setenv("LEARNEASE_SERVER_PORT", "18080")
	t.Setenv("LEARNEASE_ENGINE_LATENCY", "150ms")
	t.Setenv("LEARNEASE_ENGINE_SESSION_COST", "15")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 18080 {
		t.Errorf("期望 Port=18080，实际=%d", cfg.Server.Port)
	}
	if cfg.Engine.Latency != 150*time.Millisecond {
		t.Errorf("期望 Latency=150ms，实际=%s", cfg.Engine.Latency)
	}
	if cfg.Engine.SessionCost != 15 {
		t.Errorf("期望 SessionCost=15，实际=%d", cfg.Engine.SessionCost)
	}
	if cfg.Engine.MinSessionBalance != 10 {
		t.Errorf("期望默认 MinSessionBalance=10，实际=%d", cfg.Engine.MinSessionBalance)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("期望默认 store.driver=memory，实际=%s", cfg.Store.Driver)
	}
}

func TestLoad_SecretFromEnvOnly(t *testing.T) {
	t.Setenv("LEARNEASE_AUTH_JWT_SECRET", "env-only-secret-0123456789")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("仅通过环境变量提供密钥时 Load 应成功: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-only-secret-0123456789" {
		t.Errorf("期望 JWTSecret 来自环境变量，实际=%q", cfg.Auth.JWTSecret)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("LEARNEASE_AUTH_JWT_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Fatal("缺少 jwt_secret 时应返回错误")
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Store:  StoreConfig{Driver: StoreDriverMemory, Key: "learnease:state:v1"},
		Auth:   AuthConfig{JWTSecret: "0123456789abcdef"},
		Engine: EngineConfig{MinSessionBalance: 10, SessionCost: 10},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}

	cfg := validConfig()
	cfg.Store.Driver = "sqlite"
	if err := cfg.Validate(); err == nil {
		t.Error("未知 store.driver 应报错")
	}

	cfg = validConfig()
	cfg.Store.Driver = StoreDriverRedis
	if err := cfg.Validate(); err == nil {
		t.Error("redis 驱动未开启 redis.enabled 时应报错")
	}

	cfg = validConfig()
	cfg.Engine.Latency = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("负延迟应报错")
	}

	cfg = validConfig()
	cfg.Engine.Timezone = "Mars/Olympus_Mons"
	if err := cfg.Validate(); err == nil {
		t.Error("无效时区应报错")
	}

	cfg = validConfig()
	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("过短的 jwt_secret 应报错")
	}
}
