/*
Package pal implements a decoder and encoder for the swatch palette file
format, so variant palettes can live as plain text files next to the art
assets they recolour.

A palette file looks like:

	SWATCH1
	2
	#FFFFFF #0000FF
	#000000FF #FF0000FF

The first line is the magic, the second the number of colour pairs and each
following line one pair: the base colour then its replacement, written as
#RRGGBB or #RRGGBBAA and separated by whitespace. An omitted alpha is 255.
Blank lines and lines starting with ';' are ignored.
*/
package pal

const magic = "SWATCH1"
