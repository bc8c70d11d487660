/*
 * doc.go, part of sslayout.
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

/******************** Format Specification   ***************************************************

An XY file contains one planar layout of a nucleic-acid complex. It may only contain ASCII symbols.

An XY file has a "header" starting in the first line, and ending with a line that starts with the
characters "**" followed by one or more spaces, and the number of nucleotides.

Each line of the header must be a pair key=value. The keys "prec" (the number of decimal places
used for the coordinates) and "chains" (the lengths of the strands, separated by commas) are
always written by this package. Other keys, like "title", are kept but not interpreted.

After the header, the file has one line per nucleotide. Each line contains 4 fields: the
nucleotide (one letter, N if unknown), the x and y coordinates, and the index, starting from 0,
of the nucleotide it pairs with, or -1 if it is unpaired. Pairs must be symmetric.

Files with the extension .zst are compressed with z-standard (zstd), and those with the
extension .gz, with gzip. Any other file is plain text.

***************************************************************************************************/

// Package xy reads and writes layouts as XY text files.
package xy
