package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ecodyn/lotkasim/internal/dynamo"
	"github.com/ecodyn/lotkasim/internal/physics"
)

var _ = Describe("LotkaVolterra", func() {
	Describe("Derive", func() {
		It("computes the population growth rates", func() {
			m := physics.NewLotkaVolterra(1.2, 0.5, 0.5, 0.3)
			d := m.Derive(dynamo.State{15, 20}, 0)

			// dx/dt = 1.2·15 − 0.5·15·20, dy/dt = 0.3·15·20 − 0.5·20
			Expect(d[0]).To(Equal(-132.0))
			Expect(d[1]).To(Equal(80.0))
		})

		It("returns exact zeros at extinction", func() {
			m := physics.NewClassic()
			d := m.Derive(dynamo.State{0, 0}, 0)
			Expect(d[0]).To(BeZero())
			Expect(d[1]).To(BeZero())
		})

		It("decouples the prey when predators are extinct", func() {
			m := physics.NewLotkaVolterra(2.0, 0.5, 0.4, 0.1)
			d := m.Derive(dynamo.State{3, 0}, 0)
			Expect(d[0]).To(Equal(6.0))
			Expect(d[1]).To(BeZero())
		})

		It("is independent of time", func() {
			m := physics.NewClassic()
			x := dynamo.State{7, 3}
			Expect(m.Derive(x, 0)).To(Equal(m.Derive(x, 123.456)))
		})
	})

	Describe("Equilibria", func() {
		It("returns the closed-form fixed points", func() {
			m := physics.NewLotkaVolterra(1.0, 0.5, 0.5, 0.2)
			eq := m.Equilibria()

			Expect(eq.Extinction).To(Equal(physics.Point{0, 0}))
			Expect(eq.Coexistence.Prey).To(Equal(2.5))
			Expect(eq.Coexistence.Predator).To(Equal(2.0))
		})

		It("yields strictly positive coexistence coordinates for positive parameters", func() {
			m := physics.NewClassic()
			eq := m.Equilibria()
			Expect(eq.Coexistence.Prey).To(BeNumerically(">", 0))
			Expect(eq.Coexistence.Predator).To(BeNumerically(">", 0))
		})

		It("vanishes the derivative at the coexistence point", func() {
			m := physics.NewClassic()
			eq := m.Equilibria()
			d := m.Derive(dynamo.State{eq.Coexistence.Prey, eq.Coexistence.Predator}, 0)
			Expect(d[0]).To(BeNumerically("~", 0, 1e-12))
			Expect(d[1]).To(BeNumerically("~", 0, 1e-12))
		})
	})

	Describe("Invariant", func() {
		It("is NaN on the axes", func() {
			m := physics.NewClassic()
			Expect(math.IsNaN(m.Invariant(dynamo.State{0, 5}))).To(BeTrue())
			Expect(math.IsNaN(m.Invariant(dynamo.State{5, 0}))).To(BeTrue())
		})

		It("is stationary at the coexistence point", func() {
			m := physics.NewClassic()
			eq := m.Equilibria()
			v0 := m.Invariant(dynamo.State{eq.Coexistence.Prey, eq.Coexistence.Predator})

			// Nearby states carry a strictly larger invariant: the
			// coexistence point minimizes V.
			for _, eps := range []float64{0.01, -0.01} {
				v := m.Invariant(dynamo.State{eq.Coexistence.Prey + eps, eq.Coexistence.Predator + eps})
				Expect(v).To(BeNumerically(">", v0))
			}
		})
	})

	Describe("Validate", func() {
		It("accepts degenerate zero coefficients", func() {
			Expect(physics.NewLotkaVolterra(0, 0, 0, 0).Validate()).To(Succeed())
		})

		It("rejects non-finite coefficients", func() {
			m := physics.NewLotkaVolterra(math.NaN(), 0.4, 0.4, 0.1)
			Expect(m.Validate()).To(MatchError(dynamo.ErrInvalidParameters))

			m = physics.NewLotkaVolterra(1.1, math.Inf(1), 0.4, 0.1)
			Expect(m.Validate()).To(MatchError(dynamo.ErrInvalidParameters))
		})
	})

	Describe("Configurable", func() {
		It("round-trips parameters", func() {
			m := physics.NewClassic()
			Expect(m.SetParam("alpha", 2.5)).To(Succeed())
			Expect(m.GetParams()["alpha"]).To(Equal(2.5))
		})

		It("rejects unknown parameter names", func() {
			Expect(physics.NewClassic().SetParam("mu", 1.0)).NotTo(Succeed())
		})
	})
})
