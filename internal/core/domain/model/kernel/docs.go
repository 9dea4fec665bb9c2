// Package kernel contains the shared value objects of the domain model:
// platform-issued identifiers and monetary amounts.
//
// Order and user identifiers originate in the e-commerce platform, which issues
// positive integers; they are wrapped in dedicated types so a customer id cannot
// be passed where an order id is expected. File identifiers are generated locally
// as UUID strings when a file is stored.
//
// Money is an integer count of cents. All price arithmetic (the 30% deposit split,
// addon sums) happens in cents so repeated splits cannot drift the way binary
// floating point would.
package kernel
