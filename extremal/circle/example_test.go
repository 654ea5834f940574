package circle

import "fmt"

func ExampleNewCoefficients() {
	c, err := NewCoefficients(0.25, 10)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("N=%d a0+=%.6f a0-=%.6f a1=%.4f target=%.6f\n",
		c.N, c.At(Plus, 0), c.At(Minus, 0), c.At(Plus, 1), c.Target())
	// Output:
	// N=10 a0+=0.590909 a0-=0.409091 a1=0.2894 target=0.090909
}
