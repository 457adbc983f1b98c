package outline

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// AttrGet reads path from the node's opaque attribute bag. ok is false if
// the path is absent. The engine never calls this directly; it is exposed
// for host code that stashes per-node metadata (language mode, collapsed
// state, provenance tags) that must round-trip through TreeSnapshot
// byte-for-byte without ever being interpreted.
func (n *Node) AttrGet(path string) (string, bool) {
	r := gjson.Get(n.Attrs, path)
	if !r.Exists() {
		return "", false
	}
	return r.String(), true
}

// AttrSet writes value at path in the node's attribute bag, growing the
// underlying JSON document as needed.
func (n *Node) AttrSet(path, value string) error {
	out, err := sjson.Set(n.Attrs, path, value)
	if err != nil {
		return err
	}
	n.Attrs = out
	return nil
}

// AttrDelete removes path from the node's attribute bag.
func (n *Node) AttrDelete(path string) error {
	out, err := sjson.Delete(n.Attrs, path)
	if err != nil {
		return err
	}
	n.Attrs = out
	return nil
}
