/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a text logger at the named level; unknown levels fall back to
// info.
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.DateTime,
		FullTimestamp:   true,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.Warnf("logger: unknown level %q; using info", level)
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
