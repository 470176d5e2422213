// Package mimictest provides a contract test suite for mimic dispatchers.
package mimictest

// AllContracts returns all test cases for the contract test suite.
func AllContracts() []TestCase {
	const initialCapacity = 16

	contracts := make([]TestCase, 0, initialCapacity)

	contracts = append(contracts, resolutionContracts()...)
	contracts = append(contracts, interceptionContracts()...)
	contracts = append(contracts, scopeContracts()...)

	return contracts
}
