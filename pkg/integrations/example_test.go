package integrations_test

import (
	"fmt"

	"github.com/matzehuels/kallax/pkg/integrations"
)

func ExampleURLEncode() {
	fmt.Println(integrations.URLEncode("Matze Huels"))
	fmt.Println(integrations.URLEncode("a&b"))
	// Output:
	// Matze+Huels
	// a%26b
}

func ExampleBearerHeaders() {
	fmt.Println(integrations.BearerHeaders("s3cret")["Authorization"])
	fmt.Println(integrations.BearerHeaders("") == nil)
	// Output:
	// Bearer s3cret
	// true
}
