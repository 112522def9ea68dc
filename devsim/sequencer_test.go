package devsim_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/soclab/emifup/devsim"
	"github.com/soclab/emifup/emif"
	"github.com/soclab/emifup/sequencer"
)

var _ = Describe("ScriptedSequencer", func() {
	var (
		seq  *devsim.ScriptedSequencer
		topo *emif.Topology
	)

	BeforeEach(func() {
		seq = &devsim.ScriptedSequencer{
			Tech:       "DDR5",
			SizeGb:     32,
			ECCCapable: true,
			InitCalOK:  true,
		}
		topo = &emif.Topology{
			NumPorts:     1,
			NumInstances: 1,
			Instances:    []*emif.Instance{{}},
		}
	})

	It("should report the calibration result on every instance", func() {
		desc, err := seq.Init(topo, sequencer.InitOptions{WaitPLLLock: true})

		Expect(err).ToNot(HaveOccurred())
		Expect(desc.Calibrated).To(BeTrue())
		Expect(topo.Instances[0].CalStatus).To(BeTrue())
		Expect(seq.LastInitOpts.WaitPLLLock).To(BeTrue())
	})

	It("should follow the re-calibration script, then succeed", func() {
		seq.Recal = []bool{false, true}

		ok, err := seq.Recalibrate(topo)
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeFalse())

		ok, _ = seq.Recalibrate(topo)
		Expect(ok).To(BeTrue())

		ok, _ = seq.Recalibrate(topo)
		Expect(ok).To(BeTrue())
		Expect(seq.RecalCalls).To(Equal(3))
	})

	It("should scrub the DRAM model on full initialization", func() {
		dram := devsim.NewStorage(4096)
		Expect(dram.Write(0, []byte{0xff})).To(Succeed())
		seq.DRAM = dram

		Expect(seq.FullMemInit(topo)).To(Succeed())

		res, _ := dram.Read(0, 1)
		Expect(res).To(Equal([]byte{0}))
	})

	It("should inject the scripted errors", func() {
		seq.RecalErr = errors.New("sequencer timeout")

		_, err := seq.Recalibrate(topo)

		Expect(err).To(MatchError("sequencer timeout"))
	})
})
