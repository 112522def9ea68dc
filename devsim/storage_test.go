package devsim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/soclab/emifup/devsim"
)

var _ = Describe("Storage", func() {
	It("should read and write in a single unit", func() {
		storage := devsim.NewStorage(4096)
		Expect(storage.Write(0, []byte{1, 2, 3, 4})).To(Succeed())

		res, _ := storage.Read(0, 2)
		Expect(res).To(Equal([]byte{1, 2}))

		res, _ = storage.Read(1, 2)
		Expect(res).To(Equal([]byte{2, 3}))
	})

	It("should read and write across units", func() {
		storage := devsim.NewStorage(8192)
		Expect(storage.Write(4094, []byte{1, 2, 3, 4})).To(Succeed())

		res, _ := storage.Read(4094, 4)
		Expect(res).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should read zeroes from never-written addresses", func() {
		storage := devsim.NewStorage(1 << 30)

		res, err := storage.Read(1<<29, 4)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal([]byte{0, 0, 0, 0}))
	})

	It("should return an error if accessing over the capacity", func() {
		storage := devsim.NewStorage(4096)

		err := storage.Write(4097, []byte{1})
		Expect(err).To(MatchError(devsim.ErrOutOfRange))

		_, err = storage.Read(4097, 1)
		Expect(err).To(MatchError(devsim.ErrOutOfRange))
	})

	It("should zero everything on scrub", func() {
		storage := devsim.NewStorage(8192)
		Expect(storage.Write(100, []byte{0xde, 0xad})).To(Succeed())

		storage.Scrub()

		res, _ := storage.Read(100, 2)
		Expect(res).To(Equal([]byte{0, 0}))
	})

	It("should report its capacity", func() {
		Expect(devsim.NewStorage(4 << 30).Capacity()).To(Equal(uint64(4 << 30)))
	})
})
