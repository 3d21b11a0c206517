/*
Package otquery provides typed, read-only views of selected tables of a font image.

Views are decoded from the raw bytes of a table, as held by an ot.FontImage.
They never change the image, which makes them usable on fonts under mutation:
a view of a table which has been replaced by garbage will simply report that it
cannot be decoded.

Verify checks the integrity of a font image (table checksums, checksum
adjustment, table bounds), again without touching the image itself.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.query'
func tracer() tracing.Trace {
	return tracing.Select("font.query")
}
