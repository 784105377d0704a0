package data

import (
	"fmt"
	"io"
)

// ItemTable maps item vnum to its display name.
type ItemTable map[int16]string

// ItemName returns the item's display name, or "" for unknown items.
func (t ItemTable) ItemName(vnum int16) string {
	return t[vnum]
}

type itemFile struct {
	Items []struct {
		VNum int16  `yaml:"vnum"`
		Name string `yaml:"name"`
	} `yaml:"items"`
}

// LoadItems parses an items document.
func LoadItems(r io.Reader) (ItemTable, error) {
	f, err := decode[itemFile](r, "items")
	if err != nil {
		return nil, err
	}
	table := make(ItemTable, len(f.Items))
	for _, it := range f.Items {
		if it.Name == "" {
			return nil, fmt.Errorf("item %d has no name", it.VNum)
		}
		if _, dup := table[it.VNum]; dup {
			return nil, fmt.Errorf("duplicate item vnum %d", it.VNum)
		}
		table[it.VNum] = it.Name
	}
	return table, nil
}
