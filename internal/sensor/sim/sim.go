// Package sim provides a Lua-scripted sensor gateway so the daemon
// can run on a development host without the sensor boards attached.
package sim

import (
	"fmt"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/mayannaise/intellilight/internal/colour"
)

// Gateway drives sensor readings from a Lua script. The script must
// define a global function:
//
//	function readings(cycle)
//	    return { int_flag = 0, r = 255, g = 128, b = 0,
//	             proximity = 50, ambient = 35 }
//	end
//
// The cycle counter advances on each ReadInterruptFlag call, which is
// the first read of every control cycle; the remaining reads of that
// cycle see the same sample. The Lua state is owned by the single
// control loop goroutine and must not be shared.
type Gateway struct {
	L     *lua.LState
	cycle int

	current sample
}

type sample struct {
	intFlag   int
	rgb       colour.RGB
	proximity int
	ambient   int
}

// New creates a gateway from the given Lua script path.
func New(script string) (*Gateway, error) {
	L := lua.NewState()

	if err := L.DoFile(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to load sensor script: %w", err)
	}

	if fn := L.GetGlobal("readings"); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("sensor script %s does not define readings(cycle)", script)
	}

	log.Info().Str("script", script).Msg("Simulated sensor gateway loaded")

	g := &Gateway{L: L}
	// Prime the first sample so reads before the first interrupt-flag
	// read still return script-driven values.
	g.step()
	return g, nil
}

// Close releases the Lua state.
func (g *Gateway) Close() {
	g.L.Close()
}

// ReadInterruptFlag advances the simulation one cycle and returns the
// scripted interrupt flag.
func (g *Gateway) ReadInterruptFlag() int {
	g.step()
	return g.current.intFlag
}

// ReadColour returns the current cycle's RGB sample.
func (g *Gateway) ReadColour() colour.RGB {
	return g.current.rgb
}

// ReadProximity returns the current cycle's proximity count.
func (g *Gateway) ReadProximity() int {
	return g.current.proximity
}

// ReadAmbientLight returns the current cycle's ambient light level.
func (g *Gateway) ReadAmbientLight() int {
	return g.current.ambient
}

// step calls readings(cycle) and caches the returned table. A script
// error keeps the previous sample; the gateway contract has no error
// channel.
func (g *Gateway) step() {
	err := g.L.CallByParam(lua.P{
		Fn:      g.L.GetGlobal("readings"),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(g.cycle))
	if err != nil {
		log.Error().Err(err).Int("cycle", g.cycle).Msg("Sensor script error, keeping previous sample")
		return
	}

	ret := g.L.Get(-1)
	g.L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		log.Error().Int("cycle", g.cycle).Msg("Sensor script returned non-table, keeping previous sample")
		return
	}

	g.current = sample{
		intFlag: tableInt(tbl, "int_flag"),
		rgb: colour.RGB{
			R: uint8(tableInt(tbl, "r")),
			G: uint8(tableInt(tbl, "g")),
			B: uint8(tableInt(tbl, "b")),
		},
		proximity: tableInt(tbl, "proximity"),
		ambient:   tableInt(tbl, "ambient"),
	}
	g.cycle++
}

func tableInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}
