package otfont

import (
	"github.com/flopp/go-findfont"
	"github.com/npillmayer/mathtyp/core"
)

// LoadSystemMathFont searches the host's installed fonts for namePattern
// (e.g. "STIX Two Math", "Latin Modern Math") and parses it as a math
// font. Grounded on tyse's core/locate/resources.FindLocalFont, which
// uses the same library for the same file-system scan, minus the
// fontconfig fast path tyse layers on top (out of scope here: this
// package only turns a resolved path into a mathfont.Font, it doesn't
// own font discovery policy).
func LoadSystemMathFont(namePattern string) (*Font, error) {
	path, err := findfont.Find(namePattern)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "otfont: no system font matching %q", namePattern)
	}
	trace().Debugf("otfont: resolved %q to %s", namePattern, path)
	return LoadFile(path)
}
