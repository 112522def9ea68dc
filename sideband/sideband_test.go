package sideband_test

import (
	"errors"
	"io"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/soclab/emifup/emif"
	"github.com/soclab/emifup/hw"
	"github.com/soclab/emifup/sideband"
)

// profileRecorder remembers activations and can refuse them.
type profileRecorder struct {
	activated []string
	err       error
}

func (p *profileRecorder) Activate(name string) error {
	if p.err != nil {
		return p.err
	}
	p.activated = append(p.activated, name)
	return nil
}

var _ = Describe("Configurator", func() {
	var (
		regs     *hw.RegisterFile
		profiles *profileRecorder
		c        *sideband.Configurator
	)

	flagOutSet := sideband.DefaultF2SDRAMManagerBase + sideband.FlagOutSet0Offset

	topology := func(ports, instances int) *emif.Topology {
		return &emif.Topology{NumPorts: ports, NumInstances: instances}
	}

	BeforeEach(func() {
		regs = hw.NewRegisterFile()
		profiles = &profileRecorder{}
		c = &sideband.Configurator{
			Regs:     regs,
			Profiles: profiles,
			Log:      log.New(io.Discard, "", 0),
		}
	})

	It("should leave the sideband flags alone for single port, single EMIF", func() {
		Expect(c.Configure(topology(1, 1))).To(Succeed())

		Expect(regs.Read32(flagOutSet)).To(Equal(uint32(0)))
		Expect(regs.Read32(sideband.DefaultMPFEConfigAddr)).To(Equal(uint32(0)))
		Expect(profiles.activated).To(Equal([]string{sideband.ProfileInterleavingOff}))
	})

	It("should set the dual-port flag", func() {
		Expect(c.Configure(topology(2, 1))).To(Succeed())

		Expect(regs.Read32(flagOutSet) & (1 << 4)).ToNot(BeZero())
		Expect(profiles.activated).To(Equal([]string{sideband.ProfileInterleavingOn}))
	})

	It("should enable the lite interface and the dual-EMIF flag", func() {
		Expect(c.Configure(topology(1, 2))).To(Succeed())

		Expect(regs.Read32(flagOutSet) & (1 << 5)).ToNot(BeZero())

		mpfe := regs.Read32(sideband.DefaultMPFEConfigAddr)
		Expect(mpfe & (1 << 2)).ToNot(BeZero())
		Expect(mpfe & (1 << 8)).ToNot(BeZero())

		Expect(profiles.activated).To(Equal([]string{sideband.ProfileInterleavingOn}))
	})

	It("should pick the interleaved profile when both are dual", func() {
		Expect(c.Configure(topology(2, 2))).To(Succeed())

		Expect(profiles.activated).To(Equal([]string{sideband.ProfileInterleavingOn}))
	})

	It("should fail bring-up when the profile cannot be activated", func() {
		profiles.err = errors.New("profile table missing")

		err := c.Configure(topology(1, 1))

		Expect(err).To(MatchError(sideband.ErrProfileNotFound))
	})

	It("should honor overridden base addresses", func() {
		c.SidebandBase = 0x20000000
		c.MPFEConfigAddr = 0x30000000

		Expect(c.Configure(topology(2, 2))).To(Succeed())

		Expect(regs.Read32(0x20000000 + sideband.FlagOutSet0Offset)).
			To(Equal(uint32(0x30)))
		Expect(regs.Read32(flagOutSet)).To(BeZero())
	})
})
