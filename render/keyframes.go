package render

import "github.com/ronmurphy/iconstudio/model"

var keyframes = map[model.Animation]string{
	"bounce": `@keyframes bounce {
    0%, 100% { transform: translateY(0); }
    50% { transform: translateY(-20px); }
}`,
	"pulse": `@keyframes pulse {
    0% { transform: scale(1); }
    50% { transform: scale(1.2); }
    100% { transform: scale(1); }
}`,
	"shake": `@keyframes shake {
    0%, 100% { transform: translateX(0); }
    25% { transform: translateX(-10px); }
    75% { transform: translateX(10px); }
}`,
	"spin": `@keyframes spin {
    from { transform: rotate(0deg); }
    to { transform: rotate(360deg); }
}`,
	"flip": `@keyframes flip {
    0% { transform: perspective(400px) rotateY(0); }
    100% { transform: perspective(400px) rotateY(360deg); }
}`,
	"swing": `@keyframes swing {
    20% { transform: rotate(15deg); }
    40% { transform: rotate(-10deg); }
    60% { transform: rotate(5deg); }
    80% { transform: rotate(-5deg); }
    100% { transform: rotate(0deg); }
}`,
	"float": `@keyframes float {
    0% { transform: translateY(0); }
    50% { transform: translateY(-10px) scale(1.05); }
    100% { transform: translateY(0); }
}`,
	"tada": `@keyframes tada {
    0% { transform: scale(1); }
    10%, 20% { transform: scale(0.9) rotate(-3deg); }
    30%, 50%, 70%, 90% { transform: scale(1.1) rotate(3deg); }
    40%, 60%, 80% { transform: scale(1.1) rotate(-3deg); }
    100% { transform: scale(1) rotate(0); }
}`,
	"wobble": `@keyframes wobble {
    0% { transform: translateX(0%); }
    15% { transform: translateX(-25%) rotate(-5deg); }
    30% { transform: translateX(20%) rotate(3deg); }
    45% { transform: translateX(-15%) rotate(-3deg); }
    60% { transform: translateX(10%) rotate(2deg); }
    75% { transform: translateX(-5%) rotate(-1deg); }
    100% { transform: translateX(0%); }
}`,
	"jello": `@keyframes jello {
    0%, 100% { transform: scale3d(1, 1, 1); }
    30% { transform: scale3d(1.25, 0.75, 1); }
    40% { transform: scale3d(0.75, 1.25, 1); }
    50% { transform: scale3d(1.15, 0.85, 1); }
    65% { transform: scale3d(0.95, 1.05, 1); }
    75% { transform: scale3d(1.05, 0.95, 1); }
}`,
	"heartbeat": `@keyframes heartbeat {
    0% { transform: scale(1); }
    14% { transform: scale(1.3); }
    28% { transform: scale(1); }
    42% { transform: scale(1.3); }
    70% { transform: scale(1); }
}`,
	"rubberband": `@keyframes rubberband {
    0% { transform: scale3d(1, 1, 1); }
    30% { transform: scale3d(1.25, 0.75, 1); }
    40% { transform: scale3d(0.75, 1.25, 1); }
    50% { transform: scale3d(1.15, 0.85, 1); }
    65% { transform: scale3d(.95, 1.05, 1); }
    75% { transform: scale3d(1.05, .95, 1); }
    100% { transform: scale3d(1, 1, 1); }
}`,
	"rollin": `@keyframes rollin {
    0% { transform: translateX(-100%) rotate(-120deg); }
    100% { transform: translateX(0) rotate(0); }
}`,
	"zoompulse": `@keyframes zoompulse {
    0% { transform: scale(1); opacity: 1; }
    50% { transform: scale(1.5); opacity: 0.7; }
    100% { transform: scale(1); opacity: 1; }
}`,
	"spiral": `@keyframes spiral {
    0% { transform: rotate(0) scale(1); }
    50% { transform: rotate(180deg) scale(0.5); }
    100% { transform: rotate(360deg) scale(1); }
}`,
}

// Keyframes returns the @keyframes block for a named animation, or "" for none.
func Keyframes(a model.Animation) string {
	return keyframes[a]
}

// AnimationDeclaration is the declaration that runs a named animation.
func AnimationDeclaration(a model.Animation) string {
	return "animation: " + string(a) + " 1s infinite;"
}
