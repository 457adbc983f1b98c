package undo

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LuaWordBoundary loads a Lua function named fnName from src and returns a
// WordBoundaryFunc backed by it, letting a host script
// recognizeStartOfTypingWord the way Leo's own scripting-heavy plugin
// ecosystem lets users override editor policy with small snippets.
//
// The Lua state only has the base, string, and math libraries open; the
// io, os, and package libraries are not loaded. The base library still
// includes dofile and loadfile, so a script can read Lua files from disk.
func LuaWordBoundary(src, fnName string) (WordBoundaryFunc, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.fn), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("loading lua library %s: %w", lib.name, err)
		}
	}

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading word-boundary script: %w", err)
	}

	fn := L.GetGlobal(fnName)
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("word-boundary script: %s is not a function", fnName)
	}

	return func(oldCluster, newCluster string) bool {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(oldCluster), lua.LString(newCluster)); err != nil {
			return DefaultWordBoundary(oldCluster, newCluster)
		}
		ret := L.Get(-1)
		L.Pop(1)
		return lua.LVAsBool(ret)
	}, nil
}
