/*
 * log_test.go, part of sslayout.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(Te *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	l.Debug("hidden")
	assert.Zero(Te, buf.Len())
	l.Info("shown")
	assert.Contains(Te, buf.String(), "shown")

	buf.Reset()
	l = newLogger(&buf, log.DebugLevel)
	l.Debug("hidden no more")
	assert.Contains(Te, buf.String(), "hidden no more")
}

func TestProgress(Te *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Layout computed")
	assert.Contains(Te, buf.String(), "Layout computed (")
	assert.Contains(Te, buf.String(), "s)")
}

func TestLoggerContext(Te *testing.T) {
	assert.Equal(Te, log.Default(), loggerFromContext(context.Background()))
	l := newLogger(&bytes.Buffer{}, log.WarnLevel)
	ctx := withLogger(context.Background(), l)
	assert.Same(Te, l, loggerFromContext(ctx))
}
