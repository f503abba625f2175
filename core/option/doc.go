/*
Package option implements in-band optional values for authored attributes.

Encoded scores carry many attributes which may or may not be present, e.g. an
explicit stem length or the bulge of a slur. Layout code has to distinguish
"not given" from "given as zero", so these attributes use option types
instead of plain integers.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package option
