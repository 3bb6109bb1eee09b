// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/fedchain/fedchaind/logger"
)

// log is a logger that is initialized disabled. This means the package will
// not perform any logging by default until the caller requests it.
var log = newDisabledLogger()

func newDisabledLogger() *logger.Logger {
	l := logger.NewBackend().Logger("CHAN")
	l.SetLevel(logger.LevelOff)
	return l
}

// DisableLog disables all library log output. Logging output is disabled by
// default until UseLogger is called.
func DisableLog() {
	log.SetLevel(logger.LevelOff)
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(l *logger.Logger) {
	log = l
}
