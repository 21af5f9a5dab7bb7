package service

import (
	"os"
	"testing"

	"github.com/unibites/campus-bites/pkg/logger"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}
