package speech

// indexPage is the browser side of the bridge: a dictation widget built on
// the Web Speech API and a camera widget built on getUserMedia. Only final
// recognition results are sent over the websocket; interim text is shown
// locally and discarded.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>IRIS Bridge</title>
<style>
  body { font-family: system-ui, sans-serif; background: #1a1b26; color: #c0caf5;
         max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
  h1 { font-size: 1.2rem; color: #7aa2f7; }
  button { background: #414868; color: #c0caf5; border: none; border-radius: 6px;
           padding: .6rem 1.2rem; font-size: 1rem; cursor: pointer; margin-right: .5rem; }
  button.active { background: #f7768e; color: #1a1b26; }
  #interim { color: #565f89; font-style: italic; min-height: 1.4em; }
  #final { color: #9ece6a; min-height: 1.4em; }
  #status { color: #565f89; font-size: .85rem; }
  video { width: 100%; border-radius: 8px; margin-top: .5rem; display: none; }
  section { margin-top: 2rem; }
</style>
</head>
<body>
<h1>IRIS browser bridge</h1>
<p id="status">connecting&hellip;</p>

<section>
  <h2>Dictate a question</h2>
  <button id="mic">Start dictation</button>
  <p id="interim"></p>
  <p id="final"></p>
</section>

<section>
  <h2>Camera capture</h2>
  <button id="cam">Start camera</button>
  <button id="snap" disabled>Capture frame</button>
  <video id="video" autoplay playsinline></video>
  <canvas id="canvas" hidden></canvas>
</section>

<script>
const statusEl = document.getElementById('status');
let ws;

function connect() {
  ws = new WebSocket('ws://' + location.host + '/ws');
  ws.onopen = () => { statusEl.textContent = 'connected'; };
  ws.onclose = () => {
    statusEl.textContent = 'disconnected, retrying…';
    setTimeout(connect, 2000);
  };
}
connect();

// --- Dictation ---
const micBtn = document.getElementById('mic');
const interimEl = document.getElementById('interim');
const finalEl = document.getElementById('final');
const SpeechRecognition = window.SpeechRecognition || window.webkitSpeechRecognition;
let recognition = null;
let listening = false;

if (!SpeechRecognition) {
  micBtn.disabled = true;
  interimEl.textContent = 'Speech recognition not supported in this browser.';
} else {
  recognition = new SpeechRecognition();
  recognition.continuous = true;
  recognition.interimResults = true;
  recognition.lang = 'en-US';

  recognition.onresult = (event) => {
    let interim = '';
    for (let i = event.resultIndex; i < event.results.length; i++) {
      const transcript = event.results[i][0].transcript;
      if (event.results[i].isFinal) {
        finalEl.textContent = transcript.trim();
        if (ws && ws.readyState === WebSocket.OPEN) {
          ws.send(JSON.stringify({type: 'transcript', text: transcript.trim()}));
        }
      } else {
        interim += transcript;
      }
    }
    interimEl.textContent = interim;
  };

  recognition.onend = () => {
    // Chrome stops after silence; restart while the user wants to listen
    if (listening) recognition.start();
  };
}

micBtn.addEventListener('click', () => {
  if (!recognition) return;
  listening = !listening;
  if (listening) {
    recognition.start();
    micBtn.textContent = 'Stop dictation';
    micBtn.classList.add('active');
  } else {
    recognition.stop();
    micBtn.textContent = 'Start dictation';
    micBtn.classList.remove('active');
    interimEl.textContent = '';
  }
});

// --- Camera ---
const camBtn = document.getElementById('cam');
const snapBtn = document.getElementById('snap');
const video = document.getElementById('video');
const canvas = document.getElementById('canvas');
let stream = null;

camBtn.addEventListener('click', async () => {
  if (stream) {
    stream.getTracks().forEach(t => t.stop());
    stream = null;
    video.style.display = 'none';
    camBtn.textContent = 'Start camera';
    snapBtn.disabled = true;
    return;
  }
  try {
    stream = await navigator.mediaDevices.getUserMedia({video: true});
    video.srcObject = stream;
    video.style.display = 'block';
    camBtn.textContent = 'Stop camera';
    snapBtn.disabled = false;
  } catch (err) {
    statusEl.textContent = 'camera error: ' + err.message;
  }
});

snapBtn.addEventListener('click', () => {
  canvas.width = video.videoWidth;
  canvas.height = video.videoHeight;
  canvas.getContext('2d').drawImage(video, 0, 0);
  canvas.toBlob(async (blob) => {
    const resp = await fetch('/capture', {
      method: 'POST',
      headers: {'Content-Type': 'image/jpeg'},
      body: blob,
    });
    statusEl.textContent = resp.ok ? 'frame sent' : 'capture failed';
  }, 'image/jpeg', 0.9);
});
</script>
</body>
</html>
`
