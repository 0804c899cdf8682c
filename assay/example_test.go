package assay_test

import (
	"errors"
	"fmt"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/errs"
)

func ExampleEstimate() {
	obs := []assay.Observation{
		{Dose: 2, Response: 20, Group: assay.GroupReference},
		{Dose: 4, Response: 40, Group: assay.GroupReference},
		{Dose: 8, Response: 60, Group: assay.GroupReference},
		{Dose: 16, Response: 80, Group: assay.GroupReference},
		{Dose: 2, Response: 25, Group: assay.GroupTest},
		{Dose: 4, Response: 45, Group: assay.GroupTest},
		{Dose: 8, Response: 65, Group: assay.GroupTest},
		{Dose: 16, Response: 85, Group: assay.GroupTest},
	}

	res, err := assay.Estimate(obs)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Reference slope: %.4f\n", res.Reference.Slope)
	fmt.Printf("Relative potency: %.4f\n", res.RelativePotency)

	// Output:
	// Reference slope: 66.4386
	// Relative potency: 1.0782
}

func ExampleEstimate_validationError() {
	obs := []assay.Observation{
		{Dose: 1, Response: 10, Group: assay.GroupReference},
		{Dose: 10, Response: 30, Group: assay.GroupReference},
	}

	_, err := assay.Estimate(obs)

	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		fmt.Println(errs.Kind(err), ve.Group)
		fmt.Println(err)
	}

	// Output:
	// validation Test
	// missing group (field group, group Test): no rows
}
