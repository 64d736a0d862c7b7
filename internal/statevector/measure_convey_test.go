package statevector

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMeasurementAndNorms(t *testing.T) {
	Convey("Given a 2-qubit register in the |00> state", t, func() {
		qv, err := New(2)
		So(err, ShouldBeNil)
		qv.Initialize()

		Convey("Norm is 1 and all mass sits on qubit 0", func() {
			So(qv.Norm(), ShouldAlmostEqual, 1.0, 1e-12)
			p0, p1 := qv.Probability(0)
			So(p0, ShouldAlmostEqual, 1.0, 1e-12)
			So(p1, ShouldAlmostEqual, 0.0, 1e-12)
		})

		Convey("After a Hadamard on qubit 0, both outcomes are equally likely", func() {
			So(qv.ApplyMatrix([]int{0}, hadamardMatrix()), ShouldBeNil)
			p0, p1 := qv.Probability(0)
			So(p0, ShouldAlmostEqual, 0.5, 1e-12)
			So(p1, ShouldAlmostEqual, 0.5, 1e-12)
			So(qv.Norm(), ShouldAlmostEqual, 1.0, 1e-12)
		})

		Convey("Marginal over the empty register returns the norm", func() {
			m := qv.Marginal(nil)
			So(m, ShouldResemble, []float64{1.0})
		})

		Convey("Probabilities sums to 1 across every basis state", func() {
			So(qv.ApplyMatrix([]int{0}, hadamardMatrix()), ShouldBeNil)
			So(qv.ApplyMatrix([]int{1}, hadamardMatrix()), ShouldBeNil)
			probs := qv.Probabilities()
			total := 0.0
			for _, p := range probs {
				total += p
			}
			So(total, ShouldAlmostEqual, 1.0, 1e-12)
			for _, p := range probs {
				So(p, ShouldAlmostEqual, 0.25, 1e-12)
			}
		})
	})

	Convey("Given a Bell-pair-sized register after H then CNOT", t, func() {
		qv, err := New(2)
		So(err, ShouldBeNil)
		qv.Initialize()
		So(qv.ApplyMatrix([]int{0}, hadamardMatrix()), ShouldBeNil)
		So(qv.ApplyMCX([]int{0, 1}), ShouldBeNil)

		Convey("Only |00> and |11> carry probability mass", func() {
			probs := qv.Probabilities()
			So(probs[0], ShouldAlmostEqual, 0.5, 1e-12)
			So(probs[3], ShouldAlmostEqual, 0.5, 1e-12)
			So(probs[1], ShouldAlmostEqual, 0.0, 1e-12)
			So(probs[2], ShouldAlmostEqual, 0.0, 1e-12)
		})

		Convey("Sample measure only ever returns 0 or 3", func() {
			rnds := []float64{0.0, 0.1, 0.49, 0.51, 0.9, 0.999}
			samples := qv.SampleMeasure(rnds)
			for _, s := range samples {
				So(s == 0 || s == 3, ShouldBeTrue)
			}
		})
	})

	Convey("Given a vector large enough to cross the coarse sampling threshold", t, func() {
		qv, err := New(12, WithSampleMeasureIndexSize(4))
		So(err, ShouldBeNil)
		qv.Initialize()
		So(qv.ApplyMatrix([]int{0}, hadamardMatrix()), ShouldBeNil)

		Convey("Large-state sampling agrees with the small-state algorithm's outcomes", func() {
			rnds := []float64{0.1, 0.9}
			samples := qv.SampleMeasure(rnds)
			for i, s := range samples {
				So(s == 0 || s == 1, ShouldBeTrue)
				So(s, ShouldEqual, qv.sampleLinear(rnds[i], 0, qv.Size()))
			}
		})
	})

	Convey("Given two orthogonal basis states", t, func() {
		a, _ := New(1)
		a.Initialize()
		b, _ := New(1)
		b.Initialize()
		b.Set(0, 0)
		b.Set(1, 1)

		Convey("Their inner product is zero", func() {
			ip, err := a.InnerProduct(b)
			So(err, ShouldBeNil)
			So(math.Abs(real(ip)), ShouldBeLessThan, 1e-12)
			So(math.Abs(imag(ip)), ShouldBeLessThan, 1e-12)
		})

		Convey("A mismatched size is rejected", func() {
			c, _ := New(2)
			c.Initialize()
			_, err := a.InnerProduct(c)
			So(err, ShouldNotBeNil)
		})
	})
}
