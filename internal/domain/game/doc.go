// Package game models an RPG Maker 2000/2003 game directory prepared for
// 3DS packaging: the engine-readable data, the 3DS asset set (icon, banner,
// audio, metadata), runtime variant detection and metadata validation.
package game
