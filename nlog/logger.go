/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package nlog

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Logger is a small leveled facade over a logrus.Logger. The zero value is
// not usable; use New.
type Logger struct {
	mu  sync.Mutex
	lvl atomic.Uint32
	log *logrus.Logger
}

// New returns a Logger writing through a freshly created logrus.Logger, at
// the given minimum level.
func New(lvl Level) *Logger {
	l := &Logger{log: logrus.New()}
	l.SetLevel(lvl)
	l.log.SetLevel(lvl.Logrus())
	return l
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(lvl Level) {
	l.lvl.Store(uint32(lvl))
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.SetLevel(lvl.Logrus())
}

func (l *Logger) enabled(lvl Level) bool {
	return lvl >= Level(l.lvl.Load())
}

// Log emits msg() at lvl, only calling msg() when the level is enabled.
func (l *Logger) Log(lvl Level, fields logrus.Fields, msg func() string) {
	if !l.enabled(lvl) {
		return
	}

	e := l.log.WithFields(fields)

	switch lvl {
	case DebugLevel:
		e.Debug(msg())
	case InfoLevel:
		e.Info(msg())
	case WarnLevel:
		e.Warn(msg())
	case ErrorLevel:
		e.Error(msg())
	case FatalLevel:
		e.Error(msg())
	}
}

func (l *Logger) Debug(msg string, fields logrus.Fields) {
	l.Log(DebugLevel, fields, func() string { return msg })
}

func (l *Logger) Info(msg string, fields logrus.Fields) {
	l.Log(InfoLevel, fields, func() string { return msg })
}

func (l *Logger) Warn(msg string, fields logrus.Fields) {
	l.Log(WarnLevel, fields, func() string { return msg })
}

func (l *Logger) Error(msg string, fields logrus.Fields) {
	l.Log(ErrorLevel, fields, func() string { return msg })
}

// Default is a package-level logger at InfoLevel, used by packages that
// don't thread a *Logger through their call signature.
var Default = New(InfoLevel)
