// Package sampler searches for a single gift cycle that avoids every
// exclusion.
//
// # Strategies
//
// StrategyRetry (default) is a Las Vegas search: draw a uniformly random
// permutation, accept it if no adjacent pair (wrap-around included) is
// forbidden, repeat up to MaxAttempts times. Because each draw is an unbiased
// Fisher-Yates shuffle, every conforming cycle is equally likely to be chosen.
//
// StrategyBacktrack builds the cycle edge by edge with randomized candidate
// order and backs out of dead ends. It is bounded by MaxSteps node
// expansions. When it exhausts the search space within the bound, the
// infeasibility it reports is proven rather than probable. Results are not
// uniformly distributed over conforming cycles.
//
// Neither strategy retries after reporting INFEASIBLE. Sampling is pure
// in-memory work with no suspension points.
package sampler
