// Command arcivia browses the Metropolitan Museum of Art collection and
// serves the explore listings over HTTP.
package main

func main() {
	Execute()
}
