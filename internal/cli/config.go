/*
 * config.go, part of sslayout.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rmera/sslayout"
)

// loadOptions returns the default layout options, overridden by the values in the
// TOML file path, if path is not empty. Unknown keys are an error.
func loadOptions(path string) (*sslayout.Options, error) {
	o := sslayout.DefaultOptions()
	if path == "" {
		return o, nil
	}
	md, err := toml.DecodeFile(path, o)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return o, nil
}
