package view

import (
	"hash/fnv"

	"github.com/mww/sidepools/model"
)

// Palette maps pool types to chart colors. Types without a configured color get
// one from the fallback list, picked by hash so it is stable between renders.
type Palette struct {
	Fixed    map[model.PoolType]string
	Fallback []string
}

var DefaultPalette = Palette{
	Fixed: map[model.PoolType]string{
		model.PoolTypeMain: "#7e3af2",
		model.PoolTypeSide: "#0694a2",
	},
	Fallback: []string{"#e74694", "#ff8a4c", "#31c48d", "#3f83f8", "#faca15", "#9061f9"},
}

func (p Palette) Color(t model.PoolType) string {
	if c, ok := p.Fixed[t]; ok {
		return c
	}
	if len(p.Fallback) == 0 {
		return "#6b7280"
	}
	h := fnv.New32a()
	h.Write([]byte(t))
	return p.Fallback[h.Sum32()%uint32(len(p.Fallback))]
}
