// Package board decodes the declared RAM size from the board descriptor, a
// flattened device tree handed over by the platform firmware.
package board

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/platinasystems/fdt"
)

// ErrDecode reports an unusable board descriptor. Bring-up cannot reconcile
// geometry without one.
var ErrDecode = errors.New("board descriptor decode failed")

const dtbMagic = 0xd00dfeed

// A DTB is a board descriptor backed by a flattened device tree blob.
type DTB struct {
	Blob []byte
}

// DeclaredRAMSize decodes the total memory size declared by the /memory node.
// A zero size means the board defers to the hardware-reported size.
func (d *DTB) DeclaredRAMSize() (uint64, error) {
	return DecodeRAMSize(d.Blob)
}

// DecodeRAMSize parses a device tree blob and sums the sizes of every range
// in the memory node's reg property.
func DecodeRAMSize(blob []byte) (size uint64, err error) {
	if len(blob) < 40 || binary.BigEndian.Uint32(blob) != dtbMagic {
		return 0, fmt.Errorf("%w: not a flattened device tree", ErrDecode)
	}

	// The parser trusts its input; a truncated blob makes it slice out of
	// range.
	defer func() {
		if r := recover(); r != nil {
			size = 0
			err = fmt.Errorf("%w: malformed blob: %v", ErrDecode, r)
		}
	}()

	t := &fdt.Tree{}
	if perr := t.Parse(blob); perr != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, perr)
	}
	if t.RootNode == nil {
		return 0, fmt.Errorf("%w: empty tree", ErrDecode)
	}

	addrCells, sizeCells := cells(t)

	mem := memoryNode(t.RootNode)
	if mem == nil {
		return 0, fmt.Errorf("%w: no memory node", ErrDecode)
	}

	reg := t.PropUint32Slice(mem.Properties["reg"])
	stride := addrCells + sizeCells
	if stride == 0 || len(reg)%stride != 0 {
		return 0, fmt.Errorf("%w: memory reg has %d cells, stride %d",
			ErrDecode, len(reg), stride)
	}

	var total uint64
	for i := 0; i < len(reg); i += stride {
		total += packCells(reg[i+addrCells : i+stride])
	}

	return total, nil
}

// cells returns the root #address-cells and #size-cells, defaulting to the
// 64-bit platform convention of two cells each.
func cells(t *fdt.Tree) (addr, size int) {
	addr, size = 2, 2
	if b, ok := t.RootNode.Properties["#address-cells"]; ok && len(b) >= 4 {
		addr = int(t.PropUint32(b))
	}
	if b, ok := t.RootNode.Properties["#size-cells"]; ok && len(b) >= 4 {
		size = int(t.PropUint32(b))
	}
	return addr, size
}

func memoryNode(root *fdt.Node) *fdt.Node {
	for name, n := range root.Children {
		if name == "memory" || strings.HasPrefix(name, "memory@") {
			return n
		}
		if dt, ok := n.Properties["device_type"]; ok &&
			strings.TrimRight(string(dt), "\x00") == "memory" {
			return n
		}
	}
	return nil
}

func packCells(cells []uint32) uint64 {
	var v uint64
	for _, c := range cells {
		v = v<<32 | uint64(c)
	}
	return v
}
