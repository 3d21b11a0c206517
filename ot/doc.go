/*
Package ot is a low-level editor for SFNT font containers (TrueType and OpenType
files).

A font file in SFNT format consists of three parts:

▪︎ an offset table of 12 bytes, holding the scaler type and the number of tables,

▪︎ a table directory of 16-byte records (tag, checksum, offset, length),

▪︎ the table data, addressed by the offsets and lengths of the directory records.

Package `ot` parses a font binary into a FontImage, which keeps these three parts
apart. Clients may replace tables or insert new ones with arbitrary payloads.
The FontImage will keep the offsets of all other tables consistent, and will
recompute the per-table checksums and the whole-file checksum adjustment stored
in table 'head'. The latter step is what makes a modified font acceptable to
font rasterizers, which tend to reject fonts with broken checksums before
looking at anything else. This is the main reason for the existence of this
package: fuzzing font consumers with mutated tables is pointless if every
mutation is rejected at the checksum stage.

Package `ot` will not interpret tables (apart from the checksum adjustment field
of 'head'). Table payloads are treated as opaque byte strings; see package
`otquery` for typed views of selected tables.

# Offsets

Directory offsets are relative to the start of the table data by default, i.e.
the first byte after the table directory has offset 0. Fonts in the wild use
offsets relative to the start of the file; use option AbsoluteOffsets to parse
those. Either way, all algorithms use a single mapping from offsets to positions
in the serialized file.

# Status

No font collections (*.ttc) and no WOFF containers.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.sfnt'
func tracer() tracing.Trace {
	return tracing.Select("font.sfnt")
}
