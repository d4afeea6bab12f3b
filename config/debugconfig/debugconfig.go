/*
 * S370 - Debug options configuration.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package debugconfig wires the "trace" config option to the cpu
// package's debug mask. Trimmed from its S370 ancestor, which fanned a
// DEBUG option out to channels, devices and tape; this simulator has
// one trace sink, the hart itself.
package debugconfig

import (
	"strings"

	config "github.com/rv32sim/rv32sim/config/configparser"
	"github.com/rv32sim/rv32sim/cpu"
)

func init() {
	config.RegisterOptions("TRACE", setTrace)
}

// setTrace enables one or more named trace categories, e.g.
// "trace instr csr mem". Each category is its own whitespace-separated
// word; comma-separated values after a category are not read.
func setTrace(first string, options []config.Option) error {
	if err := cpu.Debug(strings.ToUpper(first)); err != nil {
		return err
	}
	for _, opt := range options {
		if err := cpu.Debug(strings.ToUpper(opt.Name)); err != nil {
			return err
		}
	}
	return nil
}
