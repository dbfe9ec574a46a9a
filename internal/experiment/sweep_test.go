package experiment_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/experiment"
	"github.com/san-kum/projsim/internal/flight"
)

var _ = Describe("AngleSweep", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("picks 45 degrees without drag over the default angles", func() {
		res, err := experiment.NewAngleSweep(0, nil).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Optimal).NotTo(BeNil())
		Expect(res.Optimal.Found).To(BeTrue())
		Expect(res.Optimal.BestAngle).To(Equal(45.0))
		Expect(res.Optimal.Drag).To(Equal(0.0))
		Expect(res.Optimal.MaxRange).To(Equal(res.Entries[2].Trajectory.Range()))
	})

	It("keeps sweep order in entries and legend", func() {
		res, err := experiment.NewAngleSweep(0.2, nil).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		legend, err := res.Legend()
		Expect(err).NotTo(HaveOccurred())
		Expect(legend).To(Equal([]string{"15 degrees", "30 degrees", "45 degrees", "60 degrees", "75 degrees"}))

		trajs, err := res.Trajectories()
		Expect(err).NotTo(HaveOccurred())
		Expect(trajs).To(HaveLen(5))
		for _, pts := range trajs {
			Expect(pts[0]).To(Equal(flight.Point{X: 0, Y: 0}))
			Expect(pts[len(pts)-1].Y).To(BeNumerically("<", 0))
		}
	})

	It("accepts angles in any order with duplicates", func() {
		res, err := experiment.NewAngleSweep(0, []float64{60, 45, 30, 45}).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Entries).To(HaveLen(4))
		Expect(res.Entries[0].Value).To(Equal(60.0))
		Expect(res.Optimal.BestAngle).To(Equal(45.0))
	})

	It("keeps the first of equal ranges", func() {
		res, err := experiment.NewAngleSweep(0.5, []float64{40, 40}).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Optimal.MaxRange).To(Equal(res.Entries[0].Trajectory.Range()))
		Expect(res.Entries[1].Trajectory.Range()).To(Equal(res.Optimal.MaxRange))
	})

	It("reports no optimum when nothing flies forward", func() {
		res, err := experiment.NewAngleSweep(0, []float64{100, 135}).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Entries).To(HaveLen(2))
		Expect(res.Optimal.Found).To(BeFalse())
		Expect(res.Optimal.BestAngle).To(Equal(0.0))
		Expect(res.Optimal.MaxRange).To(Equal(0.0))
	})

	It("moves the optimum below 45 degrees under heavy drag", func() {
		angles := make([]float64, 90)
		for i := range angles {
			angles[i] = float64(i + 1)
		}
		res, err := experiment.NewAngleSweep(10, angles).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Optimal.Found).To(BeTrue())
		Expect(res.Optimal.BestAngle).To(BeNumerically("<", 45))
	})

	It("applies overrides to every run", func() {
		res, err := experiment.NewAngleSweep(0, []float64{30},
			experiment.WithSpeed(35),
			experiment.WithMass(2),
			experiment.WithGravity(3.7),
			experiment.WithTimeStep(0.005),
		).Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		p := res.Entries[0].Trajectory.Params
		Expect(p.Speed).To(Equal(35.0))
		Expect(p.Mass).To(Equal(2.0))
		Expect(p.Gravity).To(Equal(3.7))
		Expect(p.Dt).To(Equal(0.005))
		Expect(p.Angle).To(Equal(30.0))
	})

	It("propagates invalid configuration", func() {
		_, err := experiment.NewAngleSweep(0, nil, experiment.WithTimeStep(0)).Run(ctx)
		Expect(err).To(MatchError(dynamo.ErrInvalidConfiguration))
	})

	It("stops when the context is canceled", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := experiment.NewAngleSweep(0, nil).Run(canceled)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("VelocitySweep", func() {
	It("runs the default speeds at 45 degrees", func() {
		res, err := experiment.NewVelocitySweep(0, nil).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Optimal).To(BeNil())
		Expect(res.Parameter).To(Equal("speed"))

		legend, err := res.Legend()
		Expect(err).NotTo(HaveOccurred())
		Expect(legend).To(Equal([]string{"10 m/s", "20 m/s", "30 m/s", "40 m/s", "50 m/s"}))

		prev := 0.0
		for _, e := range res.Entries {
			Expect(e.Trajectory.Params.Angle).To(Equal(45.0))
			Expect(e.Trajectory.Range()).To(BeNumerically(">", prev))
			prev = e.Trajectory.Range()
		}
	})

	It("honours a custom angle", func() {
		res, err := experiment.NewVelocitySweep(0.4, []float64{12.5}, experiment.WithAngle(20)).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Entries).To(HaveLen(1))
		Expect(res.Entries[0].Label).To(Equal("12.5 m/s"))
		Expect(res.Entries[0].Trajectory.Params.Angle).To(Equal(20.0))
	})
})

var _ = Describe("SweepResult", func() {
	It("fails fast before a sweep has run", func() {
		var missing *experiment.SweepResult

		_, err := missing.Legend()
		Expect(err).To(MatchError(experiment.ErrNotRun))

		_, err = (&experiment.SweepResult{}).Trajectories()
		Expect(err).To(MatchError(experiment.ErrNotRun))
	})
})

var _ = Describe("Registry", func() {
	var r *experiment.Registry

	BeforeEach(func() {
		r = experiment.NewRegistry()
	})

	It("builds experiments by name", func() {
		Expect(r.ListExperiments()).To(Equal([]string{"angles", "velocities"}))

		factory, err := r.GetExperiment("velocities")
		Expect(err).NotTo(HaveOccurred())
		Expect(factory(0, nil).Name()).To(Equal("velocities"))

		_, err = r.GetExperiment("spin")
		Expect(err).To(HaveOccurred())
	})

	It("runs a sweep with a registered integrator", func() {
		Expect(r.ListIntegrators()).To(Equal([]string{"euler", "rk4"}))

		integ, err := r.GetIntegrator("rk4")
		Expect(err).NotTo(HaveOccurred())

		res, err := experiment.NewAngleSweep(0, nil, experiment.WithIntegrator(integ)).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Optimal.BestAngle).To(Equal(45.0))

		_, err = r.GetIntegrator("verlet")
		Expect(err).To(HaveOccurred())
	})
})
