package regression_test

import (
	"fmt"
	"log"

	"github.com/arloliu/potency/regression"
)

// ExampleFitLine demonstrates fitting a straight line.
func ExampleFitLine() {
	model, err := regression.FitLine([]float64{1, 2, 3}, []float64{3, 5, 7})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(model.Formula)
	fmt.Printf("R²: %.4f\n", model.RSquared)

	// Output:
	// y = 1.00 + 2.00 * x
	// R²: 1.0000
}

// ExampleFitLog10 demonstrates the dose-response fit used by parallel-line analysis.
func ExampleFitLog10() {
	doses := []float64{1, 10, 100}
	responses := []float64{10, 30, 50}

	model, err := regression.FitLog10(doses, responses)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(model.Formula)
	fmt.Printf("Response at dose 1000: %.2f\n", model.Estimator.Estimate(1000))

	// Output:
	// y = 10.00 + 20.00 * log10(x)
	// Response at dose 1000: 70.00
}
