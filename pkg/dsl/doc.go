/*
Package dsl provides a fluent builder for constructing kestrel workflows
programmatically, instead of relying on external flow files. This is
particularly useful for dynamic workflow generation, unit testing, and
leveraging IDE autocompletion.

Example usage:

	wf := dsl.New().
		Step("cart.total").
			Args("user").
			MapInput("id", "user_id").
			MapOutput("total", "cart_total").
		Step("payment.charge").
			Param("currency", "EUR").
		Step("notify.failure").
			Nonstrict().
		Build()
*/
package dsl
