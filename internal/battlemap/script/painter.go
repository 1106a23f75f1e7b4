// Package script paints battle maps from Lua sources.
//
// A script defines a global function tile(x, y, w, h) that returns a
// tile label such as "WALL" for each cell, or nil for the default
// floor. The global chance(p) returns true with probability p and is
// backed by the generator's seeded source, so seeded maps stay
// reproducible.
package script

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const tileFunc = "tile"

// Painter runs a Lua layout script. Each Paint call uses a fresh VM.
type Painter struct {
	source string
	name   string
	log    *zap.Logger
}

// New creates a painter from Lua source. name is used in errors and logs.
func New(name, source string, log *zap.Logger) *Painter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Painter{source: source, name: name, log: log}
}

// Load reads a layout script from disk
func Load(path string, log *zap.Logger) (*Painter, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to read layout script %s", path)
	}
	return New(path, string(b), log), nil
}

// Paint implements battlemap.Painter
func (p *Painter) Paint(g *battlemap.Grid, rng *rand.Rand) error {
	vm := lua.NewState()
	defer vm.Close()

	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("chance", vm.NewFunction(func(L *lua.LState) int {
		prob := float64(L.CheckNumber(1))
		L.Push(lua.LBool(rng.Float64() < prob))
		return 1
	}))

	if err := vm.DoString(p.source); err != nil {
		return dnderr.Wrapf(err, "failed to load layout script %s", p.name).
			WithMeta("script", p.name)
	}

	fn := vm.GetGlobal(tileFunc)
	if fn.Type() != lua.LTFunction {
		return dnderr.Validationf("layout script %s does not define %s(x, y, w, h)", p.name, tileFunc)
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t, err := p.call(vm, fn, x, y, g.Width, g.Height)
			if err != nil {
				return err
			}
			if err := g.Set(x, y, t); err != nil {
				return err
			}
		}
	}

	p.log.Debug("painted scripted layout",
		zap.String("script", p.name),
		zap.Int("width", g.Width),
		zap.Int("height", g.Height),
	)
	return nil
}

func (p *Painter) call(vm *lua.LState, fn lua.LValue, x, y, w, h int) (battlemap.TileType, error) {
	if err := vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(x), lua.LNumber(y), lua.LNumber(w), lua.LNumber(h)); err != nil {
		return 0, dnderr.Wrapf(err, "layout script %s failed at (%d,%d)", p.name, x, y)
	}

	result := vm.Get(-1)
	vm.Pop(1)

	switch v := result.(type) {
	case *lua.LNilType:
		return battlemap.DefaultTile, nil
	case lua.LString:
		t, err := battlemap.ParseTileType(string(v))
		if err != nil {
			return 0, dnderr.Wrapf(err, "layout script %s at (%d,%d)", p.name, x, y)
		}
		return t, nil
	default:
		return 0, dnderr.Validationf("layout script %s returned %s at (%d,%d)", p.name, describe(result), x, y)
	}
}

func describe(v lua.LValue) string {
	return fmt.Sprintf("%s %q", v.Type(), v.String())
}
