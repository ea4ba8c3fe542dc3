/*
Package nextimg converts images and palettes into the NIM and NIP binary
formats consumed by the Next engine.
*/
package nextimg

import "github.com/sirupsen/logrus"

type NextImg struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *NextImg {
	return &NextImg{
		logger: logger,
	}
}
