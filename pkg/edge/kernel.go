package edge

// Kernel is a 3x3 convolution kernel, row-major with k[0][0] at the top
// left neighbor.
type Kernel [3][3]float64

// SobelX returns the horizontal Sobel kernel.
func SobelX() Kernel {
	return Kernel{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
}

// SobelY returns the vertical Sobel kernel.
func SobelY() Kernel {
	return Kernel{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
}

// PrewittX returns the horizontal Prewitt kernel.
func PrewittX() Kernel {
	return Kernel{{-1, 0, 1}, {-1, 0, 1}, {-1, 0, 1}}
}

// PrewittY returns the vertical Prewitt kernel.
func PrewittY() Kernel {
	return Kernel{{-1, -1, -1}, {0, 0, 0}, {1, 1, 1}}
}
