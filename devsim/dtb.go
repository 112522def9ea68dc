package devsim

import "encoding/binary"

// SynthDTB builds a minimal flattened device tree blob with a /memory node
// declaring the given size at the given base address. A zero size produces a
// memory node whose reg size is zero, meaning the board defers to the
// hardware-reported size. The blob is bit-exact against the standard FDT
// structure-block encoding (big endian, version 17 header).
func SynthDTB(base, declaredBytes uint64) []byte {
	const (
		tagBeginNode = 0x1
		tagEndNode   = 0x2
		tagProp      = 0x3
		tagEnd       = 0x9

		magic      = 0xd00dfeed
		version    = 17
		compatible = 16
		headerLen  = 40
	)

	// Strings block, with the offset of each property name.
	var strBlock []byte
	strOff := map[string]uint32{}
	for _, s := range []string{"#address-cells", "#size-cells", "device_type", "reg"} {
		strOff[s] = uint32(len(strBlock))
		strBlock = append(strBlock, s...)
		strBlock = append(strBlock, 0)
	}

	var structBlock []byte

	u32 := func(v uint32) {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		structBlock = append(structBlock, b[:]...)
	}
	name := func(s string) {
		structBlock = append(structBlock, s...)
		structBlock = append(structBlock, 0)
		for len(structBlock)%4 != 0 {
			structBlock = append(structBlock, 0)
		}
	}
	prop := func(pname string, value []byte) {
		u32(tagProp)
		u32(uint32(len(value)))
		u32(strOff[pname])
		structBlock = append(structBlock, value...)
		for len(structBlock)%4 != 0 {
			structBlock = append(structBlock, 0)
		}
	}
	cells := func(vs ...uint32) []byte {
		b := make([]byte, 4*len(vs))
		for i, v := range vs {
			binary.BigEndian.PutUint32(b[i*4:], v)
		}
		return b
	}

	u32(tagBeginNode)
	name("")
	prop("#address-cells", cells(2))
	prop("#size-cells", cells(2))

	u32(tagBeginNode)
	name("memory")
	prop("device_type", append([]byte("memory"), 0))
	prop("reg", cells(
		uint32(base>>32), uint32(base),
		uint32(declaredBytes>>32), uint32(declaredBytes)))
	u32(tagEndNode)

	u32(tagEndNode)
	u32(tagEnd)

	offStruct := uint32(headerLen)
	offStrings := offStruct + uint32(len(structBlock))
	total := offStrings + uint32(len(strBlock))

	header := []uint32{
		magic,
		total,
		offStruct,
		offStrings,
		total, // empty memory-reserve map, parked at the end
		version,
		compatible,
		0, // boot CPU
		uint32(len(strBlock)),
		uint32(len(structBlock)),
	}

	blob := make([]byte, 0, total)
	var b [4]byte
	for _, v := range header {
		binary.BigEndian.PutUint32(b[:], v)
		blob = append(blob, b[:]...)
	}
	blob = append(blob, structBlock...)
	blob = append(blob, strBlock...)

	return blob
}
