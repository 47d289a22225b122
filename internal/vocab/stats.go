package vocab

import "github.com/example/go-brahmi-lipi/internal/syllable"

// Stats summarizes the contents of a vocabulary.
type Stats struct {
	Size         int    `json:"size" yaml:"size"`
	Maximum      uint32 `json:"maximum" yaml:"maximum"`
	Unknown      uint32 `json:"unknown" yaml:"unknown"`
	Mono         int    `json:"mono" yaml:"mono"`
	Cluster      int    `json:"cluster" yaml:"cluster"`
	Meta         int    `json:"meta" yaml:"meta"`
	Placeholders int    `json:"placeholders" yaml:"placeholders"`
	Frozen       bool   `json:"frozen" yaml:"frozen"`
}

// Stats counts the slots of v by kind. Slots whose syllable maps back to a
// different id are counted as placeholders.
func (v *Vocabulary) Stats() Stats {
	v.mu.RLock()
	defer v.mu.RUnlock()

	st := Stats{
		Size:    len(v.inverse),
		Unknown: v.unknown,
		Frozen:  v.frozen,
	}
	if len(v.inverse) > 0 {
		st.Maximum = uint32(len(v.inverse) - 1)
	}

	for id, s := range v.inverse {
		if got, ok := v.forward[s]; !ok || got != uint32(id) {
			st.Placeholders++
			continue
		}

		switch s.Kind() {
		case syllable.KindMono:
			st.Mono++
		case syllable.KindCluster:
			st.Cluster++
		case syllable.KindMeta:
			st.Meta++
		}
	}

	return st
}
