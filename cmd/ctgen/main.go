// Command ctgen derives coordinate transforms from relative pose models
// and prints them as numeric or symbolic matrices.
package main

func main() {
	Execute()
}
