package testutil

import (
	"time"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/config"
)

// GoldenTorques содержит моменты конфигурации по умолчанию
// (длины 25/25/10, углы 45/0/-45, массы 1/0.5/0.5).
var GoldenTorques = arm.TorqueResult{
	M1: arm.Torque{Nm: 6.27, KgfCm: 63.91},
	M2: arm.Torque{Nm: 2.80, KgfCm: 28.55},
	M3: arm.Torque{Nm: 0.35, KgfCm: 3.54},
}

// TestConfig возвращает конфиг по умолчанию со случайным портом и частой очисткой сессий.
func TestConfig() config.Armsim {
	cfg := config.DefaultArmsim()
	cfg.Server.Port = 0
	cfg.Server.CleanupInterval = 20 * time.Millisecond
	cfg.Log.Level = "error"
	return cfg
}
