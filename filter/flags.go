package filter

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/sjson"
)

// PathSeparator joins filter names in the keys of MarshalFlags.
const PathSeparator = "/"

// MarshalFlags renders the active and disabled flags of every filter in the
// tree as one flat JSON object keyed by name path:
//
//	{"/Types":{"active":true,"disabled":false},"/Types/File":{...}}
//
// Siblings sharing a name share a key; the later one wins.
func MarshalFlags(f Filter) ([]byte, error) {
	doc := []byte("{}")
	err := Walk(f, func(input *WalkInput) error {
		key := escapeFlagKey(PathSeparator + strings.Join(input.KeyPath, PathSeparator))

		var err error
		doc, err = sjson.SetBytes(doc, key+".active", input.Filter.IsActive())
		if err != nil {
			return errors.Wrap(err, "set active")
		}
		doc, err = sjson.SetBytes(doc, key+".disabled", input.Filter.IsDisabled())
		if err != nil {
			return errors.Wrap(err, "set disabled")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

var flagKeyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
	`:`, `\:`,
)

func escapeFlagKey(key string) string {
	return flagKeyEscaper.Replace(key)
}
