/*
 * cli_test.go, part of sslayout.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/sslayout/xy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command line with args, and returns its output and its log.
func execute(Te *testing.T, args ...string) (string, string, error) {
	Te.Helper()
	var out, logs bytes.Buffer
	root := newRootCmd(&out, &logs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), logs.String(), err
}

func TestSplitStrands(Te *testing.T) {
	l, s, err := splitStrands("(((&)))")
	require.NoError(Te, err)
	assert.Equal(Te, []int{3, 3}, l)
	assert.Equal(Te, "((()))", s)
	l, s, err = splitStrands("..((..))")
	require.NoError(Te, err)
	assert.Equal(Te, []int{8}, l)
	assert.Equal(Te, "..((..))", s)
	for _, bad := range []string{"", "((&", "&))", "((&&))"} {
		_, _, err = splitStrands(bad)
		assert.Error(Te, err, bad)
	}
}

func TestSequence(Te *testing.T) {
	s, err := sequence("ggc&gcc", []int{3, 3})
	require.NoError(Te, err)
	assert.Equal(Te, "GGCGCC", s)
	s, err = sequence("", []int{3, 3})
	require.NoError(Te, err)
	assert.Empty(Te, s)
	_, err = sequence("GGCGCC", []int{3, 3})
	assert.Error(Te, err)
	_, err = sequence("GG&GCC", []int{3, 3})
	assert.Error(Te, err)
}

func TestImageName(Te *testing.T) {
	assert.Equal(Te, "hairpin.png", imageName("hairpin.xy"))
	assert.Equal(Te, "dir/duplex.png", imageName("dir/duplex.xy.zst"))
	assert.Equal(Te, "loop.png", imageName("loop.xy.gz"))
	assert.Equal(Te, "other.txt.png", imageName("other.txt"))
}

func TestParseCmd(Te *testing.T) {
	out, _, err := execute(Te, "parse", "((((....))))")
	require.NoError(Te, err)
	assert.Contains(Te, out, "12 nucleotides in 1 chain(s), 4 pairs, 1 level(s), 1 stem(s)")
	assert.Contains(Te, out, "((((....))))\n")
	assert.Contains(Te, out, "stem 1: 1-12 length 4")
	assert.NotContains(Te, out, "pair ")

	out, _, err = execute(Te, "parse", "((..[[..))..]]", "--pairs")
	require.NoError(Te, err)
	assert.Contains(Te, out, "14 nucleotides in 1 chain(s), 4 pairs, 2 level(s)")
	assert.Contains(Te, out, "pair 1 10 level 0")
	assert.Contains(Te, out, "pair 5 14 level 1")

	out, _, err = execute(Te, "parse", "(((&)))")
	require.NoError(Te, err)
	assert.Contains(Te, out, "6 nucleotides in 2 chain(s), 3 pairs")

	_, _, err = execute(Te, "parse", "((...)")
	assert.Error(Te, err)
	_, _, err = execute(Te, "parse")
	assert.Error(Te, err)
}

func TestLayoutStdout(Te *testing.T) {
	out, logs, err := execute(Te, "layout", "((((....))))", "--seq", "gggaaaaaaccc", "--report")
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(out, "notation=((((....))))\nprec=4\nchains=12\n** 12\nG 0.0000 0.0000 11\n"), out)
	assert.Contains(Te, out, "12 nucleotides in 1 chain(s), 1 stem(s)")
	assert.Contains(Te, out, "hairpin:6")
	assert.Contains(Te, logs, "Layout computed")
	d, err := xy.Decode(strings.NewReader(out))
	require.NoError(Te, err)
	assert.Equal(Te, 12, d.Coords.NVecs())
	assert.Equal(Te, "GGGAAAAAACCC", d.Seq)
	assert.Equal(Te, 11, d.Pairs[0])

	out, _, err = execute(Te, "layout", "((((....))))", "--center", "--rotate", "30")
	require.NoError(Te, err)
	d, err = xy.Decode(strings.NewReader(out))
	require.NoError(Te, err)
	cx, cy := d.Coords.Centroid()
	assert.InDelta(Te, 0, cx, 1e-3)
	assert.InDelta(Te, 0, cy, 1e-3)
	assert.InDelta(Te, 1, d.Coords.Dist(0, 11), 1e-2)

	_, _, err = execute(Te, "layout", "((((....))))", "--seq", "GGG")
	assert.Error(Te, err)
	_, _, err = execute(Te, "layout", "((((....)))")
	assert.Error(Te, err)
	_, _, err = execute(Te, "layout", "((((....))))", "--strategy", "polar")
	assert.Error(Te, err)
}

func TestLayoutFiles(Te *testing.T) {
	dir := Te.TempDir()
	xyf := filepath.Join(dir, "duplex.xy.zst")
	png := filepath.Join(dir, "duplex.png")
	out, logs, err := execute(Te, "layout", "((((&))))", "-o", xyf, "--plot", png, "--title", "duplex", "-v")
	require.NoError(Te, err)
	assert.Empty(Te, out)
	assert.Contains(Te, logs, "Layout written")
	assert.Contains(Te, logs, "DEBU")
	d, err := xy.Read(xyf)
	require.NoError(Te, err)
	assert.Equal(Te, []int{4, 4}, d.Chains)
	assert.Equal(Te, "((((&))))", d.Header["notation"])
	assert.Equal(Te, "duplex", d.Header["title"])
	assert.Equal(Te, []int{7, 6, 5, 4, 3, 2, 1, 0}, d.Pairs)
	st, err := os.Stat(png)
	require.NoError(Te, err)
	assert.Positive(Te, st.Size())

	svg := filepath.Join(dir, "again.svg")
	_, logs, err = execute(Te, "plot", xyf, "-o", svg)
	require.NoError(Te, err)
	assert.Contains(Te, logs, "Plot written to "+svg)
	_, err = os.Stat(svg)
	assert.NoError(Te, err)

	require.NoError(Te, os.Remove(png))
	_, _, err = execute(Te, "plot", xyf)
	require.NoError(Te, err)
	_, err = os.Stat(png)
	assert.NoError(Te, err)

	_, _, err = execute(Te, "plot", filepath.Join(dir, "missing.xy"))
	assert.Error(Te, err)
}
