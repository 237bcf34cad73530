package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New собирает логгер приложения: структурный JSON уровня Info для продакшна.
// Вне release-режима gin переключаемся на текстовый вывод и Debug, чтобы логи
// читались глазами при локальной разработке.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)
	l.SetFormatter(new(logrus.JSONFormatter))
	l.SetLevel(logrus.InfoLevel)

	if os.Getenv("GIN_MODE") != "release" {
		l.SetFormatter(new(logrus.TextFormatter))
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}
