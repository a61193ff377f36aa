package keymap

import (
	"context"
	"fmt"
	"io"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultLuaTimeout bounds the execution of a keymap script.
const DefaultLuaTimeout = 5 * time.Second

// luaKeymaps collects the bindings a script declares, one keymap per mode
// in declaration order.
type luaKeymaps struct {
	source  string
	order   []string
	keymaps map[string]*Keymap
}

func (c *luaKeymaps) keymap(L *lua.LState, modeName string) *Keymap {
	km, ok := c.keymaps[modeName]
	if ok {
		return km
	}
	km = NewKeymap(c.source + ":" + modeName).WithSource(c.source)
	km.Mode = modeName
	if _, err := km.Mapping(); err != nil {
		L.ArgError(1, err.Error())
		return nil
	}
	c.keymaps[modeName] = km
	c.order = append(c.order, modeName)
	return km
}

// LoadLua runs a keymap script and returns the keymaps it declares. The
// script sees a sandboxed state with the base, table, string and math
// libraries and these globals:
//
//	map(mode, keys, action [, opts])  -- opts: kind, argument, flags, linewise, desc, category
//	unmap(mode, keys)
//	allow_count(mode, prefix)
//	priority(n)
func LoadLua(ctx context.Context, r io.Reader, source string) ([]*Keymap, error) {
	code, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap script: %w", err)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultLuaTimeout)
	defer cancel()
	L.SetContext(ctx)

	c := &luaKeymaps{source: source, keymaps: make(map[string]*Keymap)}
	priority := 0

	L.SetGlobal("map", L.NewFunction(func(L *lua.LState) int {
		modeName := L.CheckString(1)
		keys := L.CheckString(2)
		action := L.CheckString(3)
		if keys == "" {
			L.ArgError(2, "keys cannot be empty")
			return 0
		}
		if action == "" {
			L.ArgError(3, "action cannot be empty")
			return 0
		}

		b := NewBinding(keys, action)
		if L.GetTop() >= 4 {
			opts := L.CheckTable(4)
			b.Kind = getTableString(L, opts, "kind")
			b.Argument = getTableString(L, opts, "argument")
			b.Linewise = getTableString(L, opts, "linewise")
			b.Description = getTableString(L, opts, "desc")
			b.Category = getTableString(L, opts, "category")
			b.Flags = getTableStrings(L, opts, "flags")
		}
		if _, _, err := b.Parse(); err != nil {
			L.RaiseError("map %q: %v", keys, err)
			return 0
		}

		if km := c.keymap(L, modeName); km != nil {
			km.AddBinding(b)
		}
		return 0
	}))

	L.SetGlobal("unmap", L.NewFunction(func(L *lua.LState) int {
		modeName := L.CheckString(1)
		keys := L.CheckString(2)
		if km := c.keymap(L, modeName); km != nil {
			km.Add(keys, Unbind)
		}
		return 0
	}))

	L.SetGlobal("allow_count", L.NewFunction(func(L *lua.LState) int {
		modeName := L.CheckString(1)
		prefix := L.CheckString(2)
		if km := c.keymap(L, modeName); km != nil {
			km.AllowCount(prefix)
		}
		return 0
	}))

	L.SetGlobal("priority", L.NewFunction(func(L *lua.LState) int {
		priority = L.CheckInt(1)
		return 0
	}))

	if err := L.DoString(string(code)); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	keymaps := make([]*Keymap, 0, len(c.order))
	for _, name := range c.order {
		km := c.keymaps[name]
		km.Priority = priority
		keymaps = append(keymaps, km)
	}
	return keymaps, nil
}

// getTableString gets a string field from a Lua table.
func getTableString(L *lua.LState, tbl *lua.LTable, field string) string {
	val := L.GetField(tbl, field)
	if str, ok := val.(lua.LString); ok {
		return string(str)
	}
	return ""
}

// getTableStrings gets a field holding either a string or an array of
// strings.
func getTableStrings(L *lua.LState, tbl *lua.LTable, field string) []string {
	switch val := L.GetField(tbl, field).(type) {
	case lua.LString:
		return []string{string(val)}
	case *lua.LTable:
		var out []string
		val.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				out = append(out, string(s))
			}
		})
		return out
	}
	return nil
}
