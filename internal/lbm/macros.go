package lbm

// Macroscopic computes density and velocity from the populations of a site.
// It returns ErrNonPositiveDensity when the velocity would be undefined.
func Macroscopic(f *Populations) (rho, ux, uy float64, err error) {
	rho = f.Density()
	if !(rho > 0) {
		return rho, 0, 0, ErrNonPositiveDensity
	}
	rho, ux, uy = macroscopic(f)
	return rho, ux, uy, nil
}

// macroscopic is the unchecked form; callers guarantee rho > 0.
func macroscopic(f *Populations) (rho, ux, uy float64) {
	upper := f[2] + f[5] + f[6]
	medium := f[0] + f[1] + f[3]
	lower := f[4] + f[7] + f[8]
	rho = upper + medium + lower
	ux = (f[1] + f[5] + f[8] - (f[3] + f[6] + f[7])) / rho
	uy = (upper - lower) / rho
	return rho, ux, uy
}

// Equilibrium returns the second-order equilibrium population for direction i.
// uSqr must equal ux*ux + uy*uy.
func Equilibrium(i int, rho, ux, uy, uSqr float64) float64 {
	cu := float64(C[i][0])*ux + float64(C[i][1])*uy
	return rho * W[i] * (1. + 3.*cu + 4.5*cu*cu - 1.5*uSqr)
}

// EquilibriumPopulations returns all nine equilibrium populations.
func EquilibriumPopulations(rho, ux, uy float64) Populations {
	var f Populations
	uSqr := ux*ux + uy*uy
	for i := range f {
		f[i] = Equilibrium(i, rho, ux, uy, uSqr)
	}
	return f
}
