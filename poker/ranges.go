package poker

import (
	"encoding/json"
	"fmt"
	"os"
)

// Range is an ordered list of candidate opponent hole-card hands.
type Range [][2]Card

// ParseRange reads four-character entries such as "AhKh" or "TsTd".
func ParseRange(entries []string) (Range, error) {
	r := make(Range, 0, len(entries))
	for _, entry := range entries {
		if len(entry) != 4 {
			return nil, fmt.Errorf("invalid range entry %q: want two cards, e.g. \"AhKh\"", entry)
		}
		first, err := ParseCard(entry[:2])
		if err != nil {
			return nil, fmt.Errorf("invalid range entry %q: %s", entry, err)
		}
		second, err := ParseCard(entry[2:])
		if err != nil {
			return nil, fmt.Errorf("invalid range entry %q: %s", entry, err)
		}
		if first == second {
			return nil, fmt.Errorf("invalid range entry %q: duplicated card", entry)
		}
		r = append(r, [2]Card{first, second})
	}
	return r, nil
}

func (r Range) Codes() []string {
	codes := make([]string, len(r))
	for i, hand := range r {
		codes[i] = hand[0].Code() + hand[1].Code()
	}
	return codes
}

type rangeFile struct {
	Hands []string `json:"hands"`
}

func (r Range) Save(filename string) error {
	data, err := json.MarshalIndent(rangeFile{Hands: r.Codes()}, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func LoadRange(filename string) (Range, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var file rangeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return ParseRange(file.Hands)
}
