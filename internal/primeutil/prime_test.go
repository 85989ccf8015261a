package primeutil

import "testing"

func TestNextPrime(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 3},
		{4, 5},
		{17, 17},
		{18, 19},
		{100, 101},
		{7919, 7919},
		{7920, 7927},
	}
	for _, c := range cases {
		if got := NextPrime(c.in); got != c.want {
			t.Errorf("NextPrime(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNextPrimeIsAlwaysPrime(t *testing.T) {
	for n := 0; n < 2000; n++ {
		p := NextPrime(n)
		if p < n {
			t.Fatalf("NextPrime(%d) = %d is less than n", n, p)
		}
		if !isPrime(p) {
			t.Fatalf("NextPrime(%d) = %d is not prime", n, p)
		}
	}
}
