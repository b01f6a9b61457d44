/*
Package FEM2D holds the bilinear quadrilateral finite element machinery for the axisymmetric
(r-z) convection-diffusion problem: element integration, local stiffness/mass/convection
assemblers, scatter into portrait-backed global matrices and the cylinder-aware boundary
condition appliers.

Coordinates follow geometry2D: X is the radius r, Y the height z. Every volume and edge integral
carries the radial weight r.
*/
package FEM2D
