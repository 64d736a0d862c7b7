package workerpool

import (
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given a range split across workers", t, func() {
		Convey("It should cover every index exactly once", func() {
			const n = 97
			var hits [n]int32
			Run(n, 4, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				So(h, ShouldEqual, int32(1))
				_ = i
			}
		})

		Convey("It should run inline when workers is 1", func() {
			var calls int32
			Run(10, 1, func(start, end int) {
				atomic.AddInt32(&calls, 1)
				So(start, ShouldEqual, 0)
				So(end, ShouldEqual, 10)
			})
			So(calls, ShouldEqual, int32(1))
		})

		Convey("It should do nothing for an empty range", func() {
			called := false
			Run(0, 4, func(start, end int) { called = true })
			So(called, ShouldBeFalse)
		})
	})
}

func TestRunReduce(t *testing.T) {
	Convey("Given a reduction over a range", t, func() {
		Convey("It should sum partial results from every chunk", func() {
			const n = 1000
			re, im := RunReduce(n, 8, func(start, end int) (float64, float64) {
				sum := 0.0
				for i := start; i < end; i++ {
					sum += float64(i)
				}
				return sum, -sum
			})
			want := float64(n*(n-1)) / 2
			So(re, ShouldEqual, want)
			So(im, ShouldEqual, -want)
		})
	})
}
